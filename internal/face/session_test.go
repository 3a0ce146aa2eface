package face

import (
	"context"
	"testing"

	"MindTrace/internal/api"
	"MindTrace/internal/models"
	"MindTrace/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFaceBackend struct {
	match         models.FaceMatch
	registerCalls int
	lastName      string
	lastRelation  string
	lastFrame     []byte
}

func (f *fakeFaceBackend) RegisterFace(ctx context.Context, name, relation, filename string, frame []byte) (*api.FaceRegisterResponse, error) {
	f.registerCalls++
	f.lastName = name
	f.lastRelation = relation
	f.lastFrame = frame
	return &api.FaceRegisterResponse{Name: name, Relation: relation}, nil
}

func (f *fakeFaceBackend) RecognizeFace(ctx context.Context, filename string, frame []byte) (*models.FaceMatch, error) {
	f.lastFrame = frame
	m := f.match
	return &m, nil
}

type staticSource struct{ frame []byte }

func (s *staticSource) NextFrame(ctx context.Context) ([]byte, error) { return s.frame, nil }
func (s *staticSource) Close() error                                  { return nil }

type deniedSource struct{}

func (s *deniedSource) NextFrame(ctx context.Context) ([]byte, error) {
	return nil, errors.WithCode(errors.CodePermission, PermissionMessage)
}
func (s *deniedSource) Close() error { return nil }

func TestClassify(t *testing.T) {
	t.Run("below threshold is uncertain", func(t *testing.T) {
		res := Classify(models.FaceMatch{Name: "Jane", Relation: "Self", Confidence: 0.42})
		assert.Equal(t, TierUncertain, res.Tier)
		assert.Equal(t, "42.0%", res.Confidence)
	})

	t.Run("threshold boundary counts as match", func(t *testing.T) {
		res := Classify(models.FaceMatch{Confidence: 0.6})
		assert.Equal(t, TierMatch, res.Tier)
		assert.Equal(t, "60.0%", res.Confidence)
	})

	t.Run("high confidence match", func(t *testing.T) {
		res := Classify(models.FaceMatch{Confidence: 0.987})
		assert.Equal(t, TierMatch, res.Tier)
		assert.Equal(t, "98.7%", res.Confidence)
	})
}

func TestSessionRecognize(t *testing.T) {
	backend := &fakeFaceBackend{match: models.FaceMatch{Name: "Jane", Relation: "Self", Confidence: 0.42}}
	s := NewSession(backend, &staticSource{frame: []byte("jpeg")}, nil, nil)

	res, err := s.Recognize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jane", res.Match.Name)
	assert.Equal(t, TierUncertain, res.Tier)
	assert.Equal(t, []byte("jpeg"), backend.lastFrame)
}

func TestSessionRegister(t *testing.T) {
	t.Run("validates before capture", func(t *testing.T) {
		backend := &fakeFaceBackend{}
		s := NewSession(backend, &staticSource{frame: []byte("jpeg")}, nil, nil)
		require.Error(t, s.Register(context.Background(), "", "Self"))
		assert.Zero(t, backend.registerCalls)
	})

	t.Run("enrolls a frame", func(t *testing.T) {
		backend := &fakeFaceBackend{}
		s := NewSession(backend, &staticSource{frame: []byte("jpeg")}, nil, nil)
		require.NoError(t, s.Register(context.Background(), "Jane", "Self"))
		assert.Equal(t, 1, backend.registerCalls)
		assert.Equal(t, "Jane", backend.lastName)
		assert.Equal(t, "Self", backend.lastRelation)
	})
}

func TestSessionPermissionDenied(t *testing.T) {
	s := NewSession(&fakeFaceBackend{}, &deniedSource{}, nil, nil)
	_, err := s.Recognize(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodePermission, errors.GetCode(err))
	assert.Equal(t, PermissionMessage, errors.UserMessage(err))
}
