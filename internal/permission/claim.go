package permission

// Module keys and access levels used in permission claims.
const (
	ModuleSettings = "settings"

	LevelFull = "full"
	LevelRead = "read"
)

// Claim maps a module key to an access level, e.g. {"settings": "full"}.
type Claim map[string]any

// Level returns the access level granted for module, or "" if none.
func (c Claim) Level(module string) string {
	if c == nil {
		return ""
	}
	s, _ := c[module].(string)
	return s
}

// HasFull reports whether the claim grants full access to module.
func (c Claim) HasFull(module string) bool {
	return c.Level(module) == LevelFull
}

// FromMetadata extracts the "permissions" object from a metadata map.
// It returns nil when the key is missing or not an object.
func FromMetadata(meta map[string]any) Claim {
	if meta == nil {
		return nil
	}
	switch p := meta["permissions"].(type) {
	case map[string]any:
		return Claim(p)
	case Claim:
		return p
	}
	return nil
}
