package models

// Estudiante representa la tabla estudiantes; relación M:N con Curso vía estudiante_curso
type Estudiante struct {
	IDEstudiante int    `json:"id_estudiante" db:"id_estudiante" validate:"gt=0,lte=2147483647"`
	Nombre       string `json:"nombre" db:"nombre" validate:"required,max=50"`
	Apellido     string `json:"apellido" db:"apellido" validate:"required,max=50"`
}

// EstudianteConCursos es la forma del listado de estudiantes con sus cursos precargados
type EstudianteConCursos struct {
	Estudiante
	Cursos []Curso `json:"cursos"`
}

// EstudianteCurso es una fila de la tabla intermedia (clave compuesta)
type EstudianteCurso struct {
	IDEstudiante int `json:"id_estudiante" db:"id_estudiante"`
	IDCurso      int `json:"id_curso" db:"id_curso"`
}

// InscripcionEntrada es el cuerpo de POST /estudiantes/:id/cursos
type InscripcionEntrada struct {
	IDCurso Opcional[int] `json:"id_curso"`
}

// EstudianteEntrada es el cuerpo de POST y PUT /estudiantes
type EstudianteEntrada struct {
	IDEstudiante Opcional[int]    `json:"id_estudiante"`
	Nombre       Opcional[string] `json:"nombre"`
	Apellido     Opcional[string] `json:"apellido"`
}

func (e EstudianteEntrada) Campos() []Campo {
	return []Campo{
		clave("id_estudiante", e.IDEstudiante),
		campo("nombre", TipoTexto, e.Nombre),
		campo("apellido", TipoTexto, e.Apellido),
	}
}

func (e EstudianteEntrada) Clave() Opcional[int] { return e.IDEstudiante }

func (e EstudianteEntrada) Nueva() Estudiante {
	est := Estudiante{IDEstudiante: e.IDEstudiante.Valor}
	e.Aplicar(&est)
	return est
}

func (e EstudianteEntrada) Aplicar(est *Estudiante) {
	e.Nombre.Asignar(&est.Nombre)
	e.Apellido.Asignar(&est.Apellido)
}
