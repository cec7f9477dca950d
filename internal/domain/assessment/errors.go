package assessment

import "errors"

var ErrAssessmentNotFound = errors.New("assessment not found")
