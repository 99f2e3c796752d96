package model

// All returns every persisted entity in dependency order, for schema bootstrap.
func All() []interface{} {
	return []interface{}{
		&User{},
		&EventLocation{},
		&Event{},
		&EventTag{},
		&EventRegistration{},
		&Metric{},
		&Skill{},
		&Account{},
		&Session{},
		&VerificationToken{},
	}
}
