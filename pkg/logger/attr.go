package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// A nil error yields an empty Attr that slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// Component records the subsystem emitting the record under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
