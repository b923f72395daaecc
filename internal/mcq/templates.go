package mcq

// Category groups distractor templates by the kind of thing a word names.
type Category string

const (
	CategoryBiological Category = "biological"
	CategoryTools      Category = "tools"
	CategoryPeople     Category = "people"
	CategoryActions    Category = "actions"
	CategoryConcepts   Category = "concepts"
	CategoryPlaces     Category = "places"
)

// Categories lists every category in a stable order.
var Categories = []Category{
	CategoryBiological,
	CategoryTools,
	CategoryPeople,
	CategoryActions,
	CategoryConcepts,
	CategoryPlaces,
}

var distractorTemplates = map[Category][]string{
	CategoryBiological: {
		"Planta herbácea que crece en terrenos húmedos y se utiliza tradicionalmente en medicina popular.",
		"Animal doméstico de pequeño tamaño que se cría por su carne y sus productos derivados.",
		"Insecto volador que se alimenta del néctar de las flores y contribuye a la polinización.",
		"Árbol frutal de origen mediterráneo que se cultiva por sus frutos comestibles y aceite.",
	},
	CategoryTools: {
		"Herramienta manual utilizada en trabajos de carpintería y construcción para cortar madera.",
		"Instrumento mecánico empleado para medir distancias y ángulos con gran precisión.",
		"Dispositivo electrónico que permite la comunicación a larga distancia mediante ondas.",
		"Utensilio de cocina fabricado en metal que se usa para preparar y servir alimentos.",
	},
	CategoryPeople: {
		"Persona especializada en el cuidado y tratamiento de enfermedades en animales domésticos.",
		"Profesional que se dedica a la enseñanza de materias académicas en instituciones educativas.",
		"Trabajador especializado en la reparación y mantenimiento de equipos electrónicos.",
		"Funcionario encargado de hacer cumplir las leyes y mantener el orden público.",
	},
	CategoryActions: {
		"Realizar una acción repetitiva con el objetivo de mejorar una habilidad específica.",
		"Organizar elementos de manera sistemática para facilitar su uso posterior.",
		"Transmitir información importante a otras personas mediante diferentes medios.",
		"Examinar cuidadosamente algo para determinar su estado o funcionamiento.",
	},
	CategoryConcepts: {
		"Conjunto de normas y principios que regulan el comportamiento en una sociedad.",
		"Proceso mental mediante el cual se adquieren y procesan nuevos conocimientos.",
		"Sistema de creencias y valores compartidos por un grupo de personas.",
		"Método científico utilizado para investigar y comprender fenómenos naturales.",
	},
	CategoryPlaces: {
		"Establecimiento comercial donde se venden productos alimenticios y artículos de primera necesidad.",
		"Edificio público destinado a actividades culturales, educativas y de entretenimiento.",
		"Zona geográfica caracterizada por condiciones climáticas y paisajes específicos.",
		"Construcción arquitectónica destinada al culto religioso y ceremonias espirituales.",
	},
}

// Keyword lists are checked in order; the first hit wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryBiological, []string{"planta", "árbol", "animal", "mamífero", "ave", "pez", "insecto"}},
	{CategoryTools, []string{"herramienta", "instrumento", "dispositivo", "aparato", "máquina"}},
	{CategoryPeople, []string{"persona", "profesional", "trabajador", "especialista"}},
	{CategoryActions, []string{"acción", "hacer", "realizar", "proceso"}},
	{CategoryPlaces, []string{"sala", "edificio", "lugar", "establecimiento"}},
}

// Templates returns a copy of the distractor templates for a category.
func Templates(category Category) []string {
	return append([]string(nil), distractorTemplates[category]...)
}
