package kanban

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/commandcenter/internal/models"
)

// IDFunc produces a new unique task id for a source at a given instant.
type IDFunc func(source models.Source, now time.Time) string

// NewTaskID returns "<prefix>-<unix millis>-<9 char random suffix>".
func NewTaskID(source models.Source, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s-%d-%s", source.IDPrefix(), now.UnixMilli(), suffix)
}
