package models

// Pasaporte representa la tabla pasaportes.
// id_persona es única: una persona tiene a lo sumo un pasaporte.
type Pasaporte struct {
	IDPasaporte int    `json:"id_pasaporte" db:"id_pasaporte" validate:"gt=0,lte=2147483647"`
	Numero      string `json:"numero" db:"numero" validate:"required,max=20"`
	IDPersona   int    `json:"id_persona" db:"id_persona" validate:"gt=0,lte=2147483647"`
}

// PasaporteEntrada es el cuerpo de POST y PUT /pasaportes
type PasaporteEntrada struct {
	IDPasaporte Opcional[int]    `json:"id_pasaporte"`
	Numero      Opcional[string] `json:"numero"`
	IDPersona   Opcional[int]    `json:"id_persona"`
}

func (e PasaporteEntrada) Campos() []Campo {
	return []Campo{
		clave("id_pasaporte", e.IDPasaporte),
		campo("numero", TipoTexto, e.Numero),
		campo("id_persona", TipoEntero, e.IDPersona),
	}
}

func (e PasaporteEntrada) Clave() Opcional[int] { return e.IDPasaporte }

func (e PasaporteEntrada) Nueva() Pasaporte {
	p := Pasaporte{IDPasaporte: e.IDPasaporte.Valor}
	e.Aplicar(&p)
	return p
}

func (e PasaporteEntrada) Aplicar(p *Pasaporte) {
	e.Numero.Asignar(&p.Numero)
	e.IDPersona.Asignar(&p.IDPersona)
}
