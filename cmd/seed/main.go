// seed aplica el esquema y carga un catálogo de ejemplo (productos, bodegas y órdenes pendientes)
// para probar los endpoints de cumplimiento.
//
// Uso: go run ./cmd/seed [fecha_base RFC3339]
// Las órdenes se crean un día antes de la fecha base (por defecto, ahora).
// Lee la conexión de DATABASE_URL / DB_* igual que la API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-fulfillment/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse-fulfillment/pkg/config"
)

type seedProduct struct {
	id    int64
	name  string
	price string
}

type seedOrder struct {
	id, productID int64
	amount        int
}

var (
	products = []seedProduct{
		{1, "Tornillo 1/4", "10.00"},
		{2, "Tuerca 1/4", "2.50"},
		{3, "Arandela", "12.34"},
	}
	warehouses = []struct {
		id            int64
		name, address string
	}{
		{1, "Central", "Calle 10 # 20-30"},
		{2, "Norte", "Carrera 7 # 150-12"},
	}
	orders = []seedOrder{
		{1, 1, 3},
		{2, 2, 10},
		{3, 3, 7},
		{4, 1, 3},
	}
)

func main() {
	base := time.Now().UTC()
	if len(os.Args) > 1 {
		t, err := time.Parse(time.RFC3339, os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fecha base inválida: %v\n", err)
			os.Exit(1)
		}
		base = t
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Esquema: %v\n", err)
		os.Exit(1)
	}

	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, p := range products {
			if _, err := tx.Exec(ctx, `
				INSERT INTO product (id_product, name, price) VALUES ($1, $2, $3)
				ON CONFLICT (id_product) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price`,
				p.id, p.name, decimal.RequireFromString(p.price)); err != nil {
				return fmt.Errorf("producto %d: %w", p.id, err)
			}
		}
		for _, w := range warehouses {
			if _, err := tx.Exec(ctx, `
				INSERT INTO warehouse (id_warehouse, name, address) VALUES ($1, $2, $3)
				ON CONFLICT (id_warehouse) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address`,
				w.id, w.name, w.address); err != nil {
				return fmt.Errorf("bodega %d: %w", w.id, err)
			}
		}
		// Órdenes separadas por un minuto para que el desempate por created_at sea visible.
		for i, o := range orders {
			createdAt := base.Add(-24 * time.Hour).Add(time.Duration(i) * time.Minute)
			if _, err := tx.Exec(ctx, `
				INSERT INTO "order" (id_order, id_product, amount, created_at) VALUES ($1, $2, $3, $4)
				ON CONFLICT (id_order) DO NOTHING`,
				o.id, o.productID, o.amount, createdAt); err != nil {
				return fmt.Errorf("orden %d: %w", o.id, err)
			}
		}
		// Los IDs explícitos no avanzan las secuencias SERIAL.
		for _, seq := range []struct{ table, column string }{
			{"product", "id_product"},
			{"warehouse", "id_warehouse"},
			{`"order"`, "id_order"},
		} {
			q := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', '%s'), COALESCE(MAX(%s), 1)) FROM %s`,
				seq.table, seq.column, seq.column, seq.table)
			if _, err := tx.Exec(ctx, q); err != nil {
				return fmt.Errorf("secuencia %s: %w", seq.table, err)
			}
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar datos: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Cargados %d productos, %d bodegas, %d órdenes (fecha base %s)\n",
		len(products), len(warehouses), len(orders), base.Format(time.RFC3339))
}
