package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// DefaultAuditLimit is the page size for audit queries when a limit is not provided.
	DefaultAuditLimit = 100
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 500
)

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	return normalize(limit, DefaultLimit)
}

// NormalizeAuditLimit applies the audit-specific default.
func NormalizeAuditLimit(limit int) int {
	return normalize(limit, DefaultAuditLimit)
}

func normalize(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
