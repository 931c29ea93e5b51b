package handlers

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const tipoXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// generarExcel arma un libro con una hoja: encabezados en la fila 1 y una fila por registro
func generarExcel(hoja string, encabezados []string, anchos []float64, filas [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()

	if _, err := f.NewSheet(hoja); err != nil {
		f.Close()
		return nil, fmt.Errorf("error al crear la hoja: %w", err)
	}
	if hoja != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			f.Close()
			return nil, fmt.Errorf("error al borrar la hoja por defecto: %w", err)
		}
	}
	index, err := f.GetSheetIndex(hoja)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)

	estilo, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error al crear el estilo del encabezado: %w", err)
	}

	for col, encabezado := range encabezados {
		celda, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(hoja, celda, encabezado); err != nil {
			f.Close()
			return nil, fmt.Errorf("error al escribir el encabezado %s: %w", celda, err)
		}
		if err := f.SetCellStyle(hoja, celda, celda, estilo); err != nil {
			f.Close()
			return nil, fmt.Errorf("error al aplicar el estilo: %w", err)
		}
		if col < len(anchos) {
			nombre, err := excelize.ColumnNumberToName(col + 1)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetColWidth(hoja, nombre, nombre, anchos[col]); err != nil {
				f.Close()
				return nil, fmt.Errorf("error al ajustar el ancho de columna: %w", err)
			}
		}
	}

	for i, fila := range filas {
		celda, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(hoja, celda, &fila); err != nil {
			f.Close()
			return nil, fmt.Errorf("error al escribir la fila %d: %w", i+2, err)
		}
	}

	// Congelar encabezado
	if err := f.SetPanes(hoja, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("error al congelar el encabezado: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("error al escribir el archivo: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("error al cerrar el archivo: %w", err)
	}
	return buf.Bytes(), nil
}
