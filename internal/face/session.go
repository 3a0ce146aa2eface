package face

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"MindTrace/internal/api"
	"MindTrace/internal/models"
	"MindTrace/internal/validate"
	"MindTrace/pkg/errors"
	"MindTrace/pkg/notification"

	"github.com/sirupsen/logrus"
)

// Tier classifies a recognition result for display.
type Tier string

const (
	TierMatch     Tier = "match"     // confidence >= threshold
	TierUncertain Tier = "uncertain" // below threshold, shown in warning color
)

// PermissionMessage is the actionable text shown when the capture device
// cannot be opened.
const PermissionMessage = "Camera access denied. Allow camera access in your system settings and try again."

// FrameSource produces JPEG frames. Implementations wrap whatever capture
// mechanism the platform provides.
type FrameSource interface {
	NextFrame(ctx context.Context) ([]byte, error)
	Close() error
}

// FileSource reads each frame from a snapshot path, for capture pipelines
// that drop stills on disk and for tests.
type FileSource struct {
	Path string
}

func (f *FileSource) NextFrame(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if pe, ok := err.(*fs.PathError); ok && os.IsPermission(pe) {
			return nil, errors.WrapCode(errors.CodePermission, err, PermissionMessage)
		}
		return nil, errors.Wrapf(err, "read frame from %s", f.Path)
	}
	return data, nil
}

func (f *FileSource) Close() error { return nil }

// Backend is the slice of the API client the session needs.
type Backend interface {
	RegisterFace(ctx context.Context, name, relation, filename string, frame []byte) (*api.FaceRegisterResponse, error)
	RecognizeFace(ctx context.Context, filename string, frame []byte) (*models.FaceMatch, error)
}

// Result is a recognition outcome prepared for display.
type Result struct {
	Match      models.FaceMatch
	Tier       Tier
	Confidence string // e.g. "42.0%"
}

// Session drives the register/recognize screens over a frame source.
type Session struct {
	backend Backend
	source  FrameSource
	log     *logrus.Logger
	notices *notification.Center
}

func NewSession(backend Backend, source FrameSource, log *logrus.Logger, notices *notification.Center) *Session {
	if log == nil {
		log = logrus.New()
	}
	return &Session{backend: backend, source: source, log: log, notices: notices}
}

// Recognize grabs one frame and asks the server whose face it is.
func (s *Session) Recognize(ctx context.Context) (*Result, error) {
	frame, err := s.source.NextFrame(ctx)
	if err != nil {
		s.report(err)
		return nil, err
	}

	match, err := s.backend.RecognizeFace(ctx, "frame.jpg", frame)
	if err != nil {
		s.report(err)
		return nil, err
	}

	res := Classify(*match)
	s.log.WithFields(logrus.Fields{
		"name":       match.Name,
		"confidence": match.Confidence,
		"tier":       res.Tier,
	}).Debug("recognition result")
	return &res, nil
}

// Register validates the form, grabs one frame and enrolls it.
func (s *Session) Register(ctx context.Context, name, relation string) error {
	if err := validate.FaceRegistration(name, relation); err != nil {
		s.report(err)
		return err
	}

	frame, err := s.source.NextFrame(ctx)
	if err != nil {
		s.report(err)
		return err
	}

	if _, err := s.backend.RegisterFace(ctx, name, relation, "frame.jpg", frame); err != nil {
		s.report(err)
		return err
	}
	if s.notices != nil {
		s.notices.Success(fmt.Sprintf("Registered %s", name))
	}
	return nil
}

func (s *Session) Close() error { return s.source.Close() }

func (s *Session) report(err error) {
	s.log.WithError(err).Warn("face operation failed")
	if s.notices != nil {
		s.notices.Error(errors.UserMessage(err))
	}
}

// Classify buckets a match against the threshold and formats its
// confidence as a percentage with one decimal.
func Classify(match models.FaceMatch) Result {
	tier := TierUncertain
	if match.Matched() {
		tier = TierMatch
	}
	return Result{
		Match:      match,
		Tier:       tier,
		Confidence: FormatConfidence(match.Confidence),
	}
}

// FormatConfidence renders 0.42 as "42.0%".
func FormatConfidence(c float64) string {
	return fmt.Sprintf("%.1f%%", c*100)
}
