package context

import "context"

type ContextKey string

var (
	RunIDKey   = ContextKey("X-Run-Id")
	DataDirKey = ContextKey("X-Data-Dir")
	SlugKey    = ContextKey("X-Page-Slug")
)

func SetRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

func GetRunID(ctx context.Context) string {
	value, ok := ctx.Value(RunIDKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetDataDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, DataDirKey, dir)
}

func GetDataDir(ctx context.Context) string {
	value, ok := ctx.Value(DataDirKey).(string)
	if !ok {
		return ""
	}
	return value
}

func SetSlug(ctx context.Context, slug string) context.Context {
	return context.WithValue(ctx, SlugKey, slug)
}

func GetSlug(ctx context.Context) string {
	value, ok := ctx.Value(SlugKey).(string)
	if !ok {
		return ""
	}
	return value
}

// LogFields returns the run-scoped values carried by ctx as log fields.
func LogFields(ctx context.Context) map[string]any {
	fields := map[string]any{}
	if runID := GetRunID(ctx); runID != "" {
		fields["run_id"] = runID
	}
	if dir := GetDataDir(ctx); dir != "" {
		fields["data_dir"] = dir
	}
	if slug := GetSlug(ctx); slug != "" {
		fields["slug"] = slug
	}
	return fields
}
