// ABOUTME: Per-target parameter adaptation
// ABOUTME: Each target receives only the fields it reads, with fixed defaults applied
package core

import (
	"github.com/harper/agentrouter/internal/handlers"
	"github.com/harper/agentrouter/internal/models"
	"github.com/harper/agentrouter/internal/services"
)

// Defaults applied during adaptation
const (
	DefaultLanguage = "de"
	DefaultContext  = ""
)

// Adapt shapes caller parameters into the request data a target reads.
// Handlers always get the raw query as "text"; unknown targets get the text only.
func Adapt(target, query string, params models.Parameters) models.Parameters {
	switch target {
	case models.HandlerGrammar:
		return models.Parameters{models.ParamText: query}

	case models.HandlerSentiment:
		return models.Parameters{
			models.ParamText:     query,
			models.ParamLanguage: params.String(models.ParamLanguage, DefaultLanguage),
			models.ParamDetailed: params.Bool(models.ParamDetailed, false),
		}

	case models.HandlerOptimizer:
		return models.Parameters{
			models.ParamText:     query,
			models.ParamTonality: params.String(models.ParamTonality, handlers.DefaultTonality),
		}

	case models.HandlerQueryRef:
		return models.Parameters{
			models.ParamText:    query,
			models.ParamContext: params.String(models.ParamContext, DefaultContext),
		}

	case models.ServiceSearch:
		out := models.Parameters{
			models.ParamQuery:      query,
			models.ParamMaxResults: params.Int(models.ParamMaxResults, services.DefaultMaxResults),
		}
		if mode := params.String(models.ParamMode, ""); mode != "" {
			out[models.ParamMode] = mode
		}
		return out

	case models.ServiceWeb:
		return models.Parameters{models.ParamURL: params.String(models.ParamURL, query)}

	case models.ServiceTime:
		return models.Parameters{}
	}

	return models.Parameters{models.ParamText: query}
}
