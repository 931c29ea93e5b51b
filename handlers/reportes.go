package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lizet96/relaciones-backend/models"
	"github.com/lizet96/relaciones-backend/repository"
)

// ReporteHandler atiende /reportes. ?formato=xlsx descarga el reporte como Excel.
type ReporteHandler struct {
	reportes repository.ReporteRepository
	log      *zap.Logger
}

func NewReporteHandler(store *repository.Store, log *zap.Logger) *ReporteHandler {
	return &ReporteHandler{reportes: store.Reportes, log: log}
}

// Clientes genera el reporte de pedidos y monto total por cliente
func (h *ReporteHandler) Clientes(c *fiber.Ctx) error {
	filas, err := h.reportes.Clientes(c.UserContext())
	if err != nil {
		return fallo(c, h.log, "Reporte no encontrado", "Error al generar el reporte de clientes", err)
	}

	if !pideExcel(c) {
		return c.JSON(fiber.Map{
			"reporte": models.Reporte[models.ReporteCliente]{Filas: filas, FechaGeneracion: time.Now()},
			"mensaje": "Reporte generado exitosamente",
		})
	}

	datos := make([][]interface{}, len(filas))
	for i, f := range filas {
		datos[i] = []interface{}{f.IDCliente, f.Nombre, f.Apellido, f.TotalPedidos, f.MontoTotal}
	}
	return h.enviarExcel(c, "reporte-clientes", "Clientes",
		[]string{"ID Cliente", "Nombre", "Apellido", "Total Pedidos", "Monto Total"},
		[]float64{12, 20, 20, 15, 15}, datos)
}

// Cursos genera el reporte de estudiantes inscritos por curso
func (h *ReporteHandler) Cursos(c *fiber.Ctx) error {
	filas, err := h.reportes.Cursos(c.UserContext())
	if err != nil {
		return fallo(c, h.log, "Reporte no encontrado", "Error al generar el reporte de cursos", err)
	}

	if !pideExcel(c) {
		return c.JSON(fiber.Map{
			"reporte": models.Reporte[models.ReporteCurso]{Filas: filas, FechaGeneracion: time.Now()},
			"mensaje": "Reporte generado exitosamente",
		})
	}

	datos := make([][]interface{}, len(filas))
	for i, f := range filas {
		datos[i] = []interface{}{f.IDCurso, f.Nombre, f.TotalEstudiantes}
	}
	return h.enviarExcel(c, "reporte-cursos", "Cursos",
		[]string{"ID Curso", "Nombre", "Total Estudiantes"},
		[]float64{12, 30, 18}, datos)
}

func pideExcel(c *fiber.Ctx) bool {
	return strings.EqualFold(c.Query("formato"), "xlsx")
}

func (h *ReporteHandler) enviarExcel(c *fiber.Ctx, archivo, hoja string, encabezados []string, anchos []float64, datos [][]interface{}) error {
	contenido, err := generarExcel(hoja, encabezados, anchos, datos)
	if err != nil {
		return fallo(c, h.log, "Reporte no encontrado", "Error al generar el archivo Excel", err)
	}
	c.Set(fiber.HeaderContentType, tipoXLSX)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+archivo+"-"+time.Now().Format("2006-01-02")+".xlsx")
	return c.Send(contenido)
}
