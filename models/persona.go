package models

// Persona representa la tabla personas; dueña 1:1 de un Pasaporte
type Persona struct {
	IDPersona       int    `json:"id_persona" db:"id_persona" validate:"gt=0,lte=2147483647"`
	Nombre          string `json:"nombre" db:"nombre" validate:"required,max=50"`
	ApellidoPaterno string `json:"apellido_paterno" db:"apellido_paterno" validate:"required,max=50"`
	ApellidoMaterno string `json:"apellido_materno" db:"apellido_materno" validate:"required,max=50"`
}

// PersonaEntrada es el cuerpo de POST y PUT /personas
type PersonaEntrada struct {
	IDPersona       Opcional[int]    `json:"id_persona"`
	Nombre          Opcional[string] `json:"nombre"`
	ApellidoPaterno Opcional[string] `json:"apellido_paterno"`
	ApellidoMaterno Opcional[string] `json:"apellido_materno"`
}

func (e PersonaEntrada) Campos() []Campo {
	return []Campo{
		clave("id_persona", e.IDPersona),
		campo("nombre", TipoTexto, e.Nombre),
		campo("apellido_paterno", TipoTexto, e.ApellidoPaterno),
		campo("apellido_materno", TipoTexto, e.ApellidoMaterno),
	}
}

func (e PersonaEntrada) Clave() Opcional[int] { return e.IDPersona }

func (e PersonaEntrada) Nueva() Persona {
	p := Persona{IDPersona: e.IDPersona.Valor}
	e.Aplicar(&p)
	return p
}

func (e PersonaEntrada) Aplicar(p *Persona) {
	e.Nombre.Asignar(&p.Nombre)
	e.ApellidoPaterno.Asignar(&p.ApellidoPaterno)
	e.ApellidoMaterno.Asignar(&p.ApellidoMaterno)
}
