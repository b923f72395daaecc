package prompt

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"
)

const definitionRubric = `Evalúa si la definición propuesta es suficientemente correcta (no necesita ser literal) para la palabra indicada.

Criterios para marcar correct:
- Captura el núcleo semántico esencial aunque use sinónimos o parafrasee.
- Coincide la categoría gramatical y el sentido principal válido en uso general.
- Puede omitir detalles secundarios siempre que no distorsione el significado central.
- Si la palabra tiene varios sentidos, acepta uno legítimo y común salvo que la definición de referencia delimite claramente otro sentido específico.

Marca incorrect si:
- Cambia el significado central o selecciona un sentido no pertinente frente a uno claramente indicado.
- Es tan vaga o general que podría aplicarse a muchos otros términos sin identificar este.
- Es demasiado estrecha o añade rasgos críticos que no forman parte del significado.
- Omite un componente indispensable que altera el concepto.
- Introduce información falsa, confusa, o mezcla con otro término.
- Es circular (solo repite la palabra) o no define realmente.

Devuelve únicamente: correct o incorrect (en minúsculas, sin explicación).

Palabra: %[1]s
Definición de referencia: %[2]s
Definición del modelo: %[3]s

Respuesta:
`

const usageRubric = `Evalúa si las dos frases proporcionadas demuestran una comprensión correcta de la palabra indicada.

Criterios para marcar correct:
- La primera frase usa la palabra '%[1]s' de manera apropiada y coherente con su definición.
- La segunda frase está relacionada con la primera y complementa el significado sin usar la palabra.
- Ambas frases juntas revelan comprensión del significado de la palabra.
- El uso contextual de la palabra es correcto según su definición de referencia.

Marca incorrect si:
- La palabra se usa incorrectamente en la primera frase.
- Las frases no están relacionadas o no complementan el significado.
- La segunda frase usa la palabra cuando no debería.
- Las frases no demuestran comprensión real del significado de la palabra.
- El contexto de uso contradice la definición de referencia.

Devuelve únicamente: correct o incorrect (en minúsculas, sin explicación).

Palabra: %[1]s
Definición de referencia: %[2]s
Respuesta del modelo: %[3]s

Respuesta:
`

// Rubric names accepted by JudgePrompt.
const (
	RubricDefinition = "definition"
	RubricUsage      = "usage"
)

// JudgePrompt selects the component for a rubric.
func JudgePrompt(rubric, word, reference, candidate string) (templ.Component, error) {
	switch rubric {
	case RubricDefinition:
		return DefinitionJudgePrompt(word, reference, candidate), nil
	case RubricUsage:
		return UsageJudgePrompt(word, reference, candidate), nil
	default:
		return nil, fmt.Errorf("unknown rubric %q", rubric)
	}
}

// RenderJudgePrompt renders the rubric prompt to a string.
func RenderJudgePrompt(ctx context.Context, rubric, word, reference, candidate string) (string, error) {
	component, err := JudgePrompt(rubric, word, reference, candidate)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", rubric, err)
	}
	return buf.String(), nil
}
