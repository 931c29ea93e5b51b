package validacion

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lizet96/relaciones-backend/models"
)

// Validador valida entidades con las etiquetas validate de sus structs.
// Los errores se indexan por el nombre JSON del campo.
type Validador struct {
	v *validator.Validate
}

func New() *Validador {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Las columnas DECIMAL(10,2) redondean: se rechaza en vez de guardar otro valor
	if err := v.RegisterValidation("decimales", decimales); err != nil {
		panic(err)
	}
	return &Validador{v: v}
}

// decimales: a lo sumo N cifras decimales (decimales=N)
func decimales(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	escalado := fl.Field().Float() * math.Pow10(n)
	return math.Abs(escalado-math.Round(escalado)) < 1e-6
}

// Estructura valida s completa. Si solo no es nil, descarta los errores de campos fuera del conjunto.
func (val *Validador) Estructura(s any, solo map[string]bool) models.ErroresValidacion {
	errores := models.ErroresValidacion{}
	err := val.v.Struct(s)
	if err == nil {
		return errores
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errores.Agregar("_", err.Error())
		return errores
	}
	for _, fe := range fieldErrs {
		if solo != nil && !solo[fe.Field()] {
			continue
		}
		errores.Agregar(fe.Field(), mensaje(fe))
	}
	return errores
}

// Campos revisa la forma de la petición: tipos incorrectos, null en campos no nulables y,
// si requeridos es true, campos ausentes. Las claves se omiten cuando incluirClave es false.
func Campos(campos []models.Campo, requeridos, incluirClave bool) models.ErroresValidacion {
	errores := models.ErroresValidacion{}
	for _, c := range campos {
		if c.Clave && !incluirClave {
			continue
		}
		switch {
		case c.Invalido:
			errores.Agregar(c.Nombre, fmt.Sprintf("El campo %s debe ser de tipo %s.", c.Nombre, c.Tipo))
		case c.Nulo && !c.Nulable:
			errores.Agregar(c.Nombre, fmt.Sprintf("El campo %s es obligatorio.", c.Nombre))
		case !c.Presente && requeridos && !c.Nulable:
			errores.Agregar(c.Nombre, fmt.Sprintf("El campo %s es obligatorio.", c.Nombre))
		}
	}
	return errores
}

// Creacion arma la entidad a partir de la entrada y la valida completa.
// Un campo ausente o con tipo incorrecto reporta un solo error.
func Creacion[T any](val *Validador, e models.Entrada[T]) (T, models.ErroresValidacion) {
	campos := e.Campos()
	errores := Campos(campos, true, true)
	entidad := e.Nueva()

	revisar := map[string]bool{}
	for _, c := range campos {
		if _, ya := errores[c.Nombre]; !ya {
			revisar[c.Nombre] = true
		}
	}
	fusionar(errores, val.Estructura(entidad, revisar))
	return entidad, errores
}

// Actualizacion escribe sobre actual solo los campos presentes y valida únicamente esos.
// La clave primaria nunca cambia.
func Actualizacion[T any](val *Validador, e models.Entrada[T], actual T) (T, models.ErroresValidacion) {
	campos := e.Campos()
	errores := Campos(campos, false, false)

	revisar := map[string]bool{}
	for _, c := range campos {
		if c.Clave || !c.Presente {
			continue
		}
		if _, ya := errores[c.Nombre]; !ya {
			revisar[c.Nombre] = true
		}
	}
	e.Aplicar(&actual)
	fusionar(errores, val.Estructura(actual, revisar))
	return actual, errores
}

func fusionar(dst, src models.ErroresValidacion) {
	for campo, msgs := range src {
		for _, m := range msgs {
			dst.Agregar(campo, m)
		}
	}
}

func mensaje(fe validator.FieldError) string {
	campo := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es obligatorio.", campo)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("El campo %s no debe ser mayor que %s caracteres.", campo, fe.Param())
		}
		return fmt.Sprintf("El campo %s no debe ser mayor que %s.", campo, fe.Param())
	case "email":
		return fmt.Sprintf("El campo %s debe ser una dirección de correo válida.", campo)
	case "datetime":
		return fmt.Sprintf("El campo %s debe ser una fecha válida con el formato AAAA-MM-DD.", campo)
	case "lte":
		return fmt.Sprintf("El campo %s no debe ser mayor que %s.", campo, fe.Param())
	case "decimales":
		return fmt.Sprintf("El campo %s no debe tener más de %s decimales.", campo, fe.Param())
	case "gt":
		return fmt.Sprintf("El campo %s debe ser mayor que %s.", campo, fe.Param())
	case "gte":
		return fmt.Sprintf("El campo %s debe ser mayor o igual que %s.", campo, fe.Param())
	case "lt":
		return fmt.Sprintf("El campo %s debe ser menor que %s.", campo, fe.Param())
	default:
		return fmt.Sprintf("El campo %s no es válido.", campo)
	}
}
