package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/vytor/speakflash/internal/errors"
	"github.com/vytor/speakflash/internal/logger"
	"github.com/vytor/speakflash/internal/models"
	"github.com/vytor/speakflash/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	Learner  services.LearnerService
	Study    services.StudyService
	Rush     services.RushService
	DB       Pinger
	validate *validator.Validate
}

func NewServer(learner services.LearnerService, study services.StudyService, rush services.RushService, db Pinger) *Server {
	return &Server{
		Learner:  learner,
		Study:    study,
		Rush:     rush,
		DB:       db,
		validate: newValidator(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

const maxBodyBytes = 1 << 20

type outcomeRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=correct incorrect timeout"`
}

func (o outcomeRequest) parse() models.Outcome {
	outcome, _ := models.ParseOutcome(o.Outcome)
	return outcome
}

type sessionRequest struct {
	IDs []int64 `json:"ids" validate:"omitempty,max=100,dive,gt=0"`
}

type categoryRequest struct {
	Category string `json:"category" validate:"max=64"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a JSON body into dst and validates it. An empty body is
// decoded as an empty object.
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && err != io.EOF {
		logger.FromContext(r.Context()).Debug("invalid request body: %v", err)
		return errors.NewBadRequestError("invalid JSON body")
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.NewValidationError(fe.Field(), "failed on '"+fe.Tag()+"'")
		}
		return errors.NewBadRequestError(err.Error())
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

// queryFilter reads ?category=. Without the parameter the learner's selected
// filter applies; an empty value means every category.
func (s *Server) queryFilter(r *http.Request) models.CategoryFilter {
	q := r.URL.Query()
	if !q.Has("category") {
		return s.Learner.CategoryFilter(r.Context())
	}
	return models.CategoryFilter(q.Get("category"))
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(name, "must be an integer")
	}
	return n, nil
}
