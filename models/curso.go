package models

// Curso representa la tabla cursos
type Curso struct {
	IDCurso int    `json:"id_curso" db:"id_curso" validate:"gt=0,lte=2147483647"`
	Nombre  string `json:"nombre" db:"nombre" validate:"required,max=50"`
}

// CursoConConteo es la forma del listado de cursos con el número de inscritos
type CursoConConteo struct {
	Curso
	EstudiantesCount int `json:"estudiantes_count"`
}

// CursoEntrada es el cuerpo de POST y PUT /cursos
type CursoEntrada struct {
	IDCurso Opcional[int]    `json:"id_curso"`
	Nombre  Opcional[string] `json:"nombre"`
}

func (e CursoEntrada) Campos() []Campo {
	return []Campo{
		clave("id_curso", e.IDCurso),
		campo("nombre", TipoTexto, e.Nombre),
	}
}

func (e CursoEntrada) Clave() Opcional[int] { return e.IDCurso }

func (e CursoEntrada) Nueva() Curso {
	c := Curso{IDCurso: e.IDCurso.Valor}
	e.Aplicar(&c)
	return c
}

func (e CursoEntrada) Aplicar(c *Curso) {
	e.Nombre.Asignar(&c.Nombre)
}
