package models

import (
	"time"
)

// ReporteCliente resume los pedidos de un cliente
type ReporteCliente struct {
	IDCliente    int     `json:"id_cliente" db:"id_cliente"`
	Nombre       string  `json:"nombre" db:"nombre"`
	Apellido     string  `json:"apellido" db:"apellido"`
	TotalPedidos int     `json:"total_pedidos" db:"total_pedidos"`
	MontoTotal   float64 `json:"monto_total" db:"monto_total"`
}

// ReporteCurso resume las inscripciones de un curso
type ReporteCurso struct {
	IDCurso          int    `json:"id_curso" db:"id_curso"`
	Nombre           string `json:"nombre" db:"nombre"`
	TotalEstudiantes int    `json:"total_estudiantes" db:"total_estudiantes"`
}

// Reporte envuelve las filas de un reporte con su fecha de generación
type Reporte[T any] struct {
	Filas           []T       `json:"filas"`
	FechaGeneracion time.Time `json:"fecha_generacion"`
}
