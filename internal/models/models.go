package models

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Subject{},
		&PYQ{},
		&Note{},
		&Order{},
		&Download{},
		&Review{},
		&SupportRequest{},
		&Profile{},
		&AdminSetting{},
	}
}
