package sections

// Identity is the name and icon a post is made under. Empty fields are unset;
// the zero Identity posts as the bot itself.
type Identity struct {
	Username  string
	IconURL   string
	IconEmoji string
}

// IsDefault reports whether nothing overrides the bot's own identity.
func (id Identity) IsDefault() bool {
	return id == Identity{}
}

// Identity resolves the posting identity stored in sec. Unknown or missing
// sections resolve to the default identity. A stored icon URL hides the
// stored emoji.
func (s *Store) Identity(sec Section) Identity {
	settings, ok := s.Settings(sec)
	if !ok {
		return Identity{}
	}

	var id Identity
	if settings.Username != nil {
		id.Username = *settings.Username
	}
	if settings.IconURL != nil {
		id.IconURL = *settings.IconURL
	}
	if settings.IconEmoji != nil && *settings.IconEmoji != "" && id.IconURL == "" {
		id.IconEmoji = NormalizeEmoji(*settings.IconEmoji)
	}
	return id
}
