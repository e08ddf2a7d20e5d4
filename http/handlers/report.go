/*
 * Copyright 2025 Comcast Cable Communications Management, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/comcast/maasaudit/audit"
	"github.com/comcast/maasaudit/common"
	"github.com/comcast/maasaudit/maas"
	"github.com/comcast/maasaudit/middleware/logging"
	"go.uber.org/zap"
)

// ReportConfig holds configuration for report handlers
type ReportConfig struct {
	// NewClient is swappable for tests; defaults to common.NewMAASClient
	NewClient func(ctx context.Context, profile string) (maas.Client, error)
}

func (cfg *ReportConfig) newClient(ctx context.Context, profile string) (maas.Client, error) {
	if cfg != nil && cfg.NewClient != nil {
		return cfg.NewClient(ctx, profile)
	}
	return common.NewMAASClient(ctx, profile)
}

// DiskReportHandler handles GET /report/disks requests
func DiskReportHandler(cfg *ReportConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handler(r.Context(), w, r, cfg, "disks")
	}
}

// NICReportHandler handles GET /report/nics requests
func NICReportHandler(cfg *ReportConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handler(r.Context(), w, r, cfg, "nics")
	}
}

func handler(ctx context.Context, w http.ResponseWriter, r *http.Request, cfg *ReportConfig, kind string) {
	log := zap.L()
	query := r.URL.Query()

	profile := query.Get("profile")
	if len(query["profile"]) != 1 || profile == "" {
		log.Error("'profile' parameter not set correctly", zap.String("profile", profile),
			zap.Any("trace_id", ctx.Value(logging.TraceIDKey("traceID"))))
		http.Error(w, "'profile' parameter not set correctly", http.StatusBadRequest)
		return
	}

	filter := maas.Filter{
		Tag:      query.Get("tag"),
		Hostname: query.Get("hostname"),
	}

	client, err := cfg.newClient(ctx, profile)
	if err != nil {
		log.Error("failed building MAAS client", zap.Error(err), zap.String("profile", profile),
			zap.Any("trace_id", ctx.Value(logging.TraceIDKey("traceID"))))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	req := common.ProfileStore.RequirementsFor(profile)

	log.Info("started report", zap.String("kind", kind), zap.String("profile", profile),
		zap.String("tag", filter.Tag), zap.String("hostname", filter.Hostname),
		zap.Any("trace_id", ctx.Value(logging.TraceIDKey("traceID"))))

	var buf bytes.Buffer
	var summary interface{}

	switch kind {
	case "nics":
		report, runErr := audit.RunNICReport(ctx, client, filter, req, &buf)
		if runErr != nil {
			err = runErr
		} else {
			report.Record(profile)
			summary = report
		}
	default:
		report, runErr := audit.RunDiskReport(ctx, client, filter, req, &buf)
		if runErr != nil {
			err = runErr
		} else {
			report.Record(profile)
			summary = report
		}
	}

	if err != nil {
		log.Error("report failed", zap.Error(err), zap.String("kind", kind), zap.String("profile", profile),
			zap.Any("trace_id", ctx.Value(logging.TraceIDKey("traceID"))))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	if query.Get("format") == "json" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(buf.Bytes())
}
