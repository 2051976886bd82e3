package transform

import "fmt"

// TargetType classifies the kind of element a transformer rewrites.
type TargetType string

const (
	TargetTypeClass    TargetType = "CLASS"
	TargetTypeMethod   TargetType = "METHOD"
	TargetTypeField    TargetType = "FIELD"
	TargetTypePreClass TargetType = "PRE_CLASS"
)

// Target addresses one concrete element inside a class: the whole class,
// one method (name + descriptor), or one field. The type is fixed by the
// constructor that built the target.
type Target struct {
	ClassName         string
	ElementName       string
	ElementDescriptor string
	Type              TargetType
}

func ClassTarget(className string) Target {
	return Target{ClassName: className, Type: TargetTypeClass}
}

// PreClassTarget addresses a class before its definition is loaded.
func PreClassTarget(className string) Target {
	return Target{ClassName: className, Type: TargetTypePreClass}
}

func MethodTarget(className, methodName, descriptor string) Target {
	return Target{
		ClassName:         className,
		ElementName:       methodName,
		ElementDescriptor: descriptor,
		Type:              TargetTypeMethod,
	}
}

func FieldTarget(className, fieldName string) Target {
	return Target{ClassName: className, ElementName: fieldName, Type: TargetTypeField}
}

// Label is the store's lookup key for this target, unique within its type.
func (t Target) Label() string {
	switch t.Type {
	case TargetTypeMethod:
		return fmt.Sprintf("%s.%s%s", t.ClassName, t.ElementName, t.ElementDescriptor)
	case TargetTypeField:
		return fmt.Sprintf("%s.%s", t.ClassName, t.ElementName)
	default:
		return t.ClassName
	}
}

func (t Target) String() string {
	return fmt.Sprintf("%s:%s", t.Type, t.Label())
}
