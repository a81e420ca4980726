package logger

import "log/slog"

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Entity(name string) slog.Attr {
	return slog.String("entity", name)
}

func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}

// Rule records an external rule identifier under the key "rule".
func Rule(id string) slog.Attr {
	return slog.String("rule", id)
}

func Path(p string) slog.Attr {
	return slog.String("path", p)
}

func Locale(l string) slog.Attr {
	return slog.String("locale", l)
}

// Violations records the number of violations found by a call.
func Violations(n int) slog.Attr {
	return slog.Int("violations", n)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
