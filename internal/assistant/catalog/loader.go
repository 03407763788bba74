package catalog

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"hr-assistant/internal/assistant/normalize"
	apperrors "hr-assistant/internal/common/errors"
	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/common/metrics"
	"hr-assistant/internal/common/validation"
	"hr-assistant/internal/models"
	"hr-assistant/pkg/registry"
)

const (
	ReasonNotFound    = "not_found"
	ReasonMalformed   = "malformed"
	ReasonUnavailable = "unavailable"
)

// Load tries each source in order and returns the catalog from the first one
// that yields a valid document. When none does, the returned error joins every
// source's failure.
func Load(ctx context.Context, folder *normalize.Folder, sources ...Source) (*Catalog, error) {
	if len(sources) == 0 {
		return nil, apperrors.NewCatalogSourceNotFoundError("no sources configured")
	}

	var errs []error
	for _, src := range sources {
		cat, err := loadFrom(ctx, folder, src)
		if err == nil {
			return cat, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// Parse validates and decodes a catalog document read from the named source.
func Parse(name string, data []byte, folder *normalize.Folder) (*Catalog, error) {
	var generic interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, apperrors.NewCatalogMalformedError(name, err)
	}

	if generic != nil {
		result, err := validation.ValidateCatalogDocument(generic)
		if err != nil {
			return nil, apperrors.NewCatalogMalformedError(name, err)
		}
		if !result.Valid {
			return nil, apperrors.NewCatalogMalformedError(name, errors.New(result.Error()))
		}
	}

	doc, err := registry.Parse(data)
	if err != nil {
		return nil, apperrors.NewCatalogMalformedError(name, err)
	}
	return New(doc.Intents, folder), nil
}

func loadFrom(ctx context.Context, folder *normalize.Folder, src Source) (*Catalog, error) {
	data, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(src.Name(), data, folder)
}

// LoadOrDefault never fails: it returns the first usable source's catalog or,
// failing that, the built-in table.
func LoadOrDefault(ctx context.Context, log logger.Logger, folder *normalize.Folder, sources ...Source) *Catalog {
	log = log.WithFields(map[string]interface{}{"component": "catalog"})
	if folder == nil {
		folder = normalize.Default()
	}

	cat, err := Load(ctx, folder, sources...)
	if err != nil {
		reason := FallbackReason(err)
		log.Warn("intent catalog unavailable, using built-in table", map[string]interface{}{
			"reason": reason,
			"error":  err.Error(),
		})
		metrics.CatalogFallbacks.WithLabelValues(reason).Inc()
		cat = Default()
	} else {
		log.Info("intent catalog loaded", map[string]interface{}{
			"intents": cat.Len(),
			"locale":  folder.Locale(),
		})
	}

	metrics.CatalogIntents.Set(float64(cat.Len()))
	return cat
}

// FallbackReason classifies a Load failure for logging and metrics. A
// malformed source outranks an unreachable one, which outranks an absent one.
func FallbackReason(err error) string {
	reason := ""
	for _, e := range flatten(err) {
		var std *apperrors.StandardError
		switch {
		case errors.As(e, &std) && std.Code == apperrors.ErrCodeCatalogMalformed:
			return ReasonMalformed
		case errors.As(e, &std) && std.Code == apperrors.ErrCodeCatalogSourceNotFound:
			if reason == "" {
				reason = ReasonNotFound
			}
		default:
			reason = ReasonUnavailable
		}
	}
	if reason == "" {
		return ReasonUnavailable
	}
	return reason
}

func flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// Describe is a short human-readable summary used by the catalog tool.
func Describe(c *Catalog) string {
	phrases := 0
	c.Range(func(_ models.IntentID, p []string) bool {
		phrases += len(p)
		return true
	})
	return fmt.Sprintf("%d intents, %d phrases", c.Len(), phrases)
}
