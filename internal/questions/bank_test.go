package questions

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/talent-scout/internal/difficulty"
)

func TestLocalReturnsExactCount(t *testing.T) {
	techs := []string{"Python", "Django", "PostgreSQL", "AWS", "PyTorch", "React", "Rust", "", "  go  "}

	for _, tech := range techs {
		for count := 1; count <= 6; count++ {
			t.Run(fmt.Sprintf("%s/%d", tech, count), func(t *testing.T) {
				qs := Local(tech, count, difficulty.Intermediate)
				assert.Len(t, qs, count)
			})
		}
	}
}

func TestLocalNonPositiveCount(t *testing.T) {
	for _, count := range []int{0, -1} {
		qs := Local("Go", count, difficulty.Beginner)
		require.NotNil(t, qs)
		assert.Empty(t, qs)
	}
}

func TestLocalIsDeterministic(t *testing.T) {
	first := Local("React", 5, difficulty.Advanced)
	second := Local("React", 5, difficulty.Advanced)
	assert.Equal(t, first, second)
}

func TestLocalIgnoresDifficulty(t *testing.T) {
	beginner := Local("AWS", 4, difficulty.Beginner)
	advanced := Local("AWS", 4, difficulty.Advanced)
	assert.Equal(t, beginner, advanced)
}

func TestLocalPythonTemplates(t *testing.T) {
	qs := Local("python 3", 3, difficulty.Intermediate)

	require.Len(t, qs, 3)
	assert.Equal(t, "Explain a recent project where you used python 3. What was your role and the biggest challenge?", qs[0])
	assert.Equal(t, "Describe the difference between deep and shallow copies in Python. Give examples.", qs[1])
	assert.Equal(t, "How do you optimize Python code for performance? Name tools or techniques you use.", qs[2])
}

func TestLocalTruncatesKeepingGeneralQuestionFirst(t *testing.T) {
	qs := Local("Flask", 1, difficulty.Beginner)
	assert.Equal(t, []string{"Explain a recent project where you used Flask. What was your role and the biggest challenge?"}, qs)
}

func TestLocalPadsWithFillers(t *testing.T) {
	qs := Local("Terraform", 5, difficulty.Beginner)

	require.Len(t, qs, 5)
	assert.Equal(t, "What are the key concepts of Terraform?", qs[1])
	assert.Equal(t, "Describe a debugging approach you follow when a Terraform based solution fails in production.", qs[2])
	assert.Equal(t, "Additional question 1 about Terraform.", qs[3])
	assert.Equal(t, "Additional question 2 about Terraform.", qs[4])
}

func TestLocalSubstitutesTechName(t *testing.T) {
	qs := Local("Azure", 3, difficulty.Beginner)
	assert.Equal(t, "Which services do you use for deploying a scalable API on Azure? Why?", qs[1])

	qs = Local("Django", 3, difficulty.Beginner)
	assert.Equal(t, "How do you handle authentication and authorization in Django?", qs[1])
}

func TestCategoryOf(t *testing.T) {
	tests := map[string]string{
		"Python":     "language",
		"FLASK":      "web_framework",
		"MySQL":      "database",
		"gcp":        "cloud",
		"Keras":      "ml_framework",
		"Vue.js":     "frontend_framework",
		"Kubernetes": "generic",
		// python is checked before django
		"Python/Django": "language",
	}

	for tech, expected := range tests {
		assert.Equal(t, expected, categoryOf(tech), tech)
	}
}
