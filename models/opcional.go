package models

import (
	"bytes"
	"encoding/json"
)

// Opcional representa un campo de entrada que puede venir o no en el cuerpo JSON.
// Presente se activa aunque el valor sea null, y entonces Nulo también;
// Invalido marca un valor con tipo incorrecto.
type Opcional[T any] struct {
	Presente bool
	Nulo     bool
	Invalido bool
	Valor    T
}

// Con construye un Opcional presente con el valor dado
func Con[T any](v T) Opcional[T] {
	return Opcional[T]{Presente: true, Valor: v}
}

func (o *Opcional[T]) UnmarshalJSON(b []byte) error {
	o.Presente = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Nulo = true
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		o.Invalido = true
		return nil
	}
	o.Valor = v
	return nil
}

// Asignar copia el valor en dst solo cuando el campo vino en la petición
func (o Opcional[T]) Asignar(dst *T) {
	if o.Presente && !o.Invalido {
		*dst = o.Valor
	}
}
