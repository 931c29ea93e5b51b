package models

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNoEncontrado se devuelve cuando la fila solicitada no existe
	ErrNoEncontrado = errors.New("registro no encontrado")
	// ErrConflicto se devuelve cuando la base de datos rechaza la operación por una restricción
	ErrConflicto = errors.New("la operación viola una restricción de integridad")
)

// ErroresValidacion agrupa los mensajes de validación por campo
type ErroresValidacion map[string][]string

// Agregar añade un mensaje para el campo indicado
func (e ErroresValidacion) Agregar(campo, mensaje string) {
	e[campo] = append(e[campo], mensaje)
}

// Vacio indica si no hay errores registrados
func (e ErroresValidacion) Vacio() bool {
	return len(e) == 0
}

// Err devuelve nil cuando no hay errores, para poder retornarlo directamente
func (e ErroresValidacion) Err() error {
	if e.Vacio() {
		return nil
	}
	return e
}

func (e ErroresValidacion) Error() string {
	campos := make([]string, 0, len(e))
	for campo := range e {
		campos = append(campos, campo)
	}
	sort.Strings(campos)

	var sb strings.Builder
	for i, campo := range campos {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(campo)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(e[campo], ", "))
	}
	return sb.String()
}
