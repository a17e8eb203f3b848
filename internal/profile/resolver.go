// Package profile resolves the index event date that anchors a patient's journey.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/heartline/internal/constants"
	apperrors "github.com/julianstephens/heartline/internal/errors"
	"github.com/julianstephens/heartline/internal/logger"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/storage"
	"github.com/julianstephens/heartline/internal/utils"
)

// Resolver reads the stored profile first and falls back to the onboarding
// payload cached on this device.
type Resolver struct {
	profiles storage.ProfileStore
	cache    storage.KVStore
}

func NewResolver(profiles storage.ProfileStore, cache storage.KVStore) *Resolver {
	return &Resolver{profiles: profiles, cache: cache}
}

// IndexDate returns the patient's index event date as YYYY-MM-DD, or
// errors.ErrNoIndexDate when neither source has a usable one.
func (r *Resolver) IndexDate(ctx context.Context, patientID string) (string, error) {
	p, err := r.profiles.GetProfile(ctx, patientID)
	switch {
	case err == nil && utils.ValidateDateFormat(p.IndexEventDate):
		return p.IndexEventDate, nil
	case err == nil:
		logger.Warn("Profile has an unusable index event date", "patient", patientID, "value", p.IndexEventDate)
	case !errors.Is(err, storage.ErrNotFound):
		return "", &apperrors.ReadError{Source: "profile", Err: err}
	}

	data, err := r.Onboarding(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return "", apperrors.ErrNoIndexDate
	}
	if err != nil {
		return "", err
	}
	if !utils.ValidateDateFormat(data.IndexEventDate) {
		return "", apperrors.ErrNoIndexDate
	}
	return data.IndexEventDate, nil
}

// Onboarding returns the cached questionnaire payload. A corrupt payload is
// logged and reported as storage.ErrNotFound.
func (r *Resolver) Onboarding(ctx context.Context) (models.OnboardingData, error) {
	raw, err := r.cache.GetValue(ctx, constants.OnboardingCacheKey)
	if errors.Is(err, storage.ErrNotFound) {
		return models.OnboardingData{}, err
	}
	if err != nil {
		return models.OnboardingData{}, &apperrors.ReadError{Source: "onboarding cache", Err: err}
	}

	var data models.OnboardingData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		logger.Warn("Ignoring corrupt onboarding cache", "error", err)
		return models.OnboardingData{}, storage.ErrNotFound
	}
	return data, nil
}

// SaveOnboarding caches the questionnaire payload under the fixed onboarding key.
func (r *Resolver) SaveOnboarding(ctx context.Context, data models.OnboardingData) error {
	if !utils.ValidateDateFormat(data.IndexEventDate) {
		return fmt.Errorf("invalid index event date %q (expected YYYY-MM-DD)", data.IndexEventDate)
	}
	if data.CompletedAt.IsZero() {
		data.CompletedAt = time.Now()
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return r.cache.SetValue(ctx, constants.OnboardingCacheKey, string(raw))
}
