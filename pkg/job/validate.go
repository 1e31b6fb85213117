package job

import "fmt"

// ValidationError describes one problem with a job. Part is empty for
// job-level findings.
type ValidationError struct {
	Part    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Part == "" {
		return e.Message
	}
	return fmt.Sprintf("part %q: %s", e.Part, e.Message)
}

// Validate checks the job for problems that would make a quote
// meaningless. An empty result means the job is valid.
func Validate(j *Job) []ValidationError {
	if j == nil {
		return []ValidationError{{Message: "job is nil"}}
	}
	var errs []ValidationError
	if len(j.Parts) == 0 {
		errs = append(errs, ValidationError{Message: "job has no parts"})
	}
	if j.Infill != nil && (*j.Infill < 0 || *j.Infill > 100) {
		errs = append(errs, ValidationError{Message: fmt.Sprintf("infill %g%% outside 0-100", *j.Infill)})
	}
	if j.PrintHours != nil && *j.PrintHours < 0 {
		errs = append(errs, ValidationError{Message: fmt.Sprintf("negative print time %g h", *j.PrintHours)})
	}

	seen := make(map[string]bool)
	for i, p := range j.Parts {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
			errs = append(errs, ValidationError{Part: name, Message: "part has no name"})
		} else if seen[name] {
			errs = append(errs, ValidationError{Part: name, Message: "duplicate part name"})
		}
		seen[name] = true

		switch {
		case p.Path == "" && p.Shape == nil:
			errs = append(errs, ValidationError{Part: name, Message: "part has neither a file nor a shape"})
		case p.Path != "" && p.Shape != nil:
			errs = append(errs, ValidationError{Part: name, Message: "part has both a file and a shape"})
		}
		if p.Copies < 1 {
			errs = append(errs, ValidationError{Part: name, Message: fmt.Sprintf("copies must be at least 1, got %d", p.Copies)})
		}
		if p.Scale.X <= 0 || p.Scale.Y <= 0 || p.Scale.Z <= 0 {
			errs = append(errs, ValidationError{Part: name, Message: fmt.Sprintf("scale must be positive, got %+v", p.Scale)})
		}
		if p.Shape != nil {
			errs = append(errs, validateShape(name, p.Shape)...)
		}
	}
	return errs
}

// validateShape walks a shape tree checking arity and dimensions.
func validateShape(part string, s *Shape) []ValidationError {
	if s == nil {
		return []ValidationError{{Part: part, Message: "nil shape"}}
	}
	bad := func(format string, args ...interface{}) []ValidationError {
		return []ValidationError{{Part: part, Message: s.Kind.String() + ": " + fmt.Sprintf(format, args...)}}
	}

	var want int
	switch {
	case s.Kind.IsPrimitive():
		want = 0
	case s.Kind.IsBoolean():
		want = 2
	case s.Kind == ShapeTranslate || s.Kind == ShapeRotate:
		want = 1
	default:
		return bad("unknown shape kind")
	}
	if len(s.Children) != want {
		return bad("expected %d operands, got %d", want, len(s.Children))
	}

	switch s.Kind {
	case ShapeBox:
		if s.Size.X <= 0 || s.Size.Y <= 0 || s.Size.Z <= 0 {
			return bad("dimensions must be positive, got %+v", s.Size)
		}
	case ShapeCylinder:
		if s.Height <= 0 || s.Radius <= 0 {
			return bad("height and radius must be positive, got %g, %g", s.Height, s.Radius)
		}
	case ShapeSphere:
		if s.Radius <= 0 {
			return bad("radius must be positive, got %g", s.Radius)
		}
	}

	var errs []ValidationError
	for _, c := range s.Children {
		errs = append(errs, validateShape(part, c)...)
	}
	return errs
}
