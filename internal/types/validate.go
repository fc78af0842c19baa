package types

import "github.com/go-playground/validator/v10"

// validate is shared; validator caches struct metadata per instance.
var validate = validator.New()
