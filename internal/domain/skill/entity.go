package skill

import (
	"time"

	"github.com/google/uuid"
)

// Skill is one row of the persisted taxonomy, seeded from the engine's
// default dictionary and served read-only over the API.
type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  string
	Synonyms  []string
	CreatedAt time.Time
}
