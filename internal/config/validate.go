package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

var (
	logLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	logFormats = map[string]bool{"json": true, "console": true}
)

// NormalizeAndValidate returns a normalized copy of cfg and what is wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.CORS.AllowedOrigins = trimList(out.CORS.AllowedOrigins)
	out.App.Host = strings.TrimSpace(out.App.Host)
	out.App.DBFile = strings.TrimSpace(out.App.DBFile)
	out.Log.Level = strings.ToLower(strings.TrimSpace(out.Log.Level))
	out.Log.Format = strings.ToLower(strings.TrimSpace(out.Log.Format))

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.App.DBFile == "" {
		res.addErr("app.db_file is required")
	}

	if !logLevels[out.Log.Level] {
		res.addErr("log.level must be one of debug, info, warn, error (got %q)", out.Log.Level)
	}
	if !logFormats[out.Log.Format] {
		res.addErr("log.format must be json or console (got %q)", out.Log.Format)
	}

	if out.RateLimit.RequestsPerSecond < 0 {
		res.addErr("rate_limit.requests_per_second must be >= 0")
	}
	if out.RateLimit.RequestsPerSecond > 0 && out.RateLimit.Burst <= 0 {
		res.addErr("rate_limit.burst must be > 0 when rate limiting is enabled")
	}

	if out.Events.KeepaliveSeconds < 0 {
		res.addErr("events.keepalive_seconds must be >= 0")
	}

	if len(out.CORS.AllowedOrigins) == 0 {
		res.addWarn("cors.allowed_origins is empty; browsers on other origins will be refused.")
	}
	for _, o := range out.CORS.AllowedOrigins {
		if o == "*" {
			res.addWarn("cors.allowed_origins contains \"*\"; any origin may call the API.")
		}
	}

	for name, glyph := range out.Icons.Companies {
		if strings.TrimSpace(name) == "" {
			res.addErr("icons.companies has an entry with an empty company name")
		}
		if glyph == "" {
			res.addErr("icons.companies[%q] glyph cannot be empty", name)
		}
	}

	if !out.Seed.Enabled {
		res.addWarn("seed.enabled is false; an empty store will stay empty.")
	}

	return out, res
}
