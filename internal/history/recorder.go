package history

import (
	"log"

	"gorm.io/gorm"

	"github.com/sitelens/sitelens/internal/models"
	"github.com/sitelens/sitelens/pkg/capture"
)

// Recorder persists one RenderRecord per screenshot call. It implements
// capture.Recorder.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record inserts the render outcome. Failures are logged and swallowed;
// history must never affect the request path.
func (r *Recorder) Record(render capture.Render) {
	if r == nil || r.db == nil {
		return
	}
	rec := models.RenderRecord{
		URL:         render.URL,
		Width:       render.Width,
		Height:      render.Height,
		Format:      render.Format,
		SizeBytes:   render.SizeBytes,
		CacheHit:    render.CacheHit,
		Placeholder: render.Placeholder,
	}
	if err := r.db.Create(&rec).Error; err != nil {
		log.Printf("Failed to record render history: %v", err)
	}
}
