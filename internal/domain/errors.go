package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los errores tipados de
// abajo envuelven estos centinelas; los callers comparan con errors.Is y
// extraen detalle con errors.As.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrBadEntry          = errors.New("registro de importación inválido")
	ErrInvalidDate       = errors.New("avance de fecha inválido")
	ErrInvalidInput      = errors.New("entrada inválida")
)

// UnknownKeyError id desconocido en un registro (partner, product o transaction).
type UnknownKeyError struct {
	Kind string // "partner", "product", "transaction"
	Key  string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Key, ErrNotFound)
}

func (e *UnknownKeyError) Unwrap() error { return ErrNotFound }

// DuplicatePartnerError el id de socio ya está registrado.
type DuplicatePartnerError struct {
	ID string
}

func (e *DuplicatePartnerError) Error() string {
	return fmt.Sprintf("socio %q: %v", e.ID, ErrDuplicate)
}

func (e *DuplicatePartnerError) Unwrap() error { return ErrDuplicate }

// StockShortageError stock insuficiente para vender o desagregar.
// Para ventas no satisfacibles por fabricación, ProductID identifica el primer
// componente simple en falta encontrado en el recorrido en profundidad de la
// receta; Requested/Available se refieren a ese componente.
type StockShortageError struct {
	ProductID string
	Requested int
	Available int
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("producto %q: se piden %d, hay %d: %v",
		e.ProductID, e.Requested, e.Available, ErrInsufficientStock)
}

func (e *StockShortageError) Unwrap() error { return ErrInsufficientStock }

// BadEntryError token inicial no reconocido durante la importación.
type BadEntryError struct {
	Token string
}

func (e *BadEntryError) Error() string {
	return fmt.Sprintf("token %q: %v", e.Token, ErrBadEntry)
}

func (e *BadEntryError) Unwrap() error { return ErrBadEntry }

// InvalidDateError delta de días no positivo.
type InvalidDateError struct {
	Days int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("avance de %d días: %v", e.Days, ErrInvalidDate)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

// CyclicRecipeError la receta de un producto derivado se alcanza a sí misma.
// Las recetas deben ser acíclicas; un ciclo causaría fabricación sin fin.
type CyclicRecipeError struct {
	ProductID string
}

func (e *CyclicRecipeError) Error() string {
	return fmt.Sprintf("receta de %q contiene un ciclo: %v", e.ProductID, ErrInvalidInput)
}

func (e *CyclicRecipeError) Unwrap() error { return ErrInvalidInput }
