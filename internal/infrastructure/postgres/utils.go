package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
)

// SQLSTATE usados por este paquete y por la función add_product_to_warehouse.
const (
	codeUniqueViolation = "23505"
	codeNoDataFound     = "P0002"
	codeInvalidParam    = "22023"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// classifyProcedureError traduce un error de la rutina almacenada a una clase de dominio.
// Primero por SQLSTATE; para RAISE sin código propio, por el texto del mensaje.
func classifyProcedureError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return domain.Internal("procedimiento", err)
	}

	switch pgErr.Code {
	case codeNoDataFound:
		return domain.NewError(domain.ErrNotFound, pgErr.Message)
	case codeUniqueViolation:
		return domain.NewError(domain.ErrConflict, pgErr.Message)
	case codeInvalidParam:
		return domain.NewError(domain.ErrInvalidInput, pgErr.Message)
	}

	// Solo los RAISE de PL/pgSQL (clase P0) se clasifican por texto; un error del
	// servidor como 42883 (función inexistente) sigue siendo interno.
	if !strings.HasPrefix(pgErr.Code, "P0") {
		return domain.Internal("procedimiento", err)
	}
	msg := strings.ToLower(pgErr.Message)
	switch {
	case containsAny(msg, "no encontrad", "no existe", "not found", "does not exist", "no matching"):
		return domain.NewError(domain.ErrNotFound, pgErr.Message)
	case containsAny(msg, "ya fue cumplida", "already"):
		return domain.NewError(domain.ErrConflict, pgErr.Message)
	}
	return domain.Internal("procedimiento", err)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
