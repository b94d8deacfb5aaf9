package services

import "github.com/ecolemusique/backoffice/internal/utils"

// Wire actions accepted by manage-instruments and manage-orchestras.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

const msgUnsupportedAction = "Action non supportée"

// SupportedAction reports whether action names a catalogue command.
func SupportedAction(action string) bool {
	switch action {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// UnsupportedAction is the error for any other action, whatever the payload.
func UnsupportedAction(op string) error {
	return utils.Invalid(op, msgUnsupportedAction)
}

// InstrumentCommand is one of CreateInstrument, UpdateInstrument or DeleteInstrument.
type InstrumentCommand interface {
	instrumentCommand()
}

type CreateInstrument struct {
	Name string
}

type UpdateInstrument struct {
	ID   string
	Name string
}

type DeleteInstrument struct {
	ID string
}

func (CreateInstrument) instrumentCommand() {}
func (UpdateInstrument) instrumentCommand() {}
func (DeleteInstrument) instrumentCommand() {}

// ParseInstrumentCommand turns the wire action into a validated command.
// An unknown action is rejected before any field is looked at.
func ParseInstrumentCommand(action, id, name string) (InstrumentCommand, error) {
	const op = "ParseInstrumentCommand"

	switch action {
	case ActionCreate:
		if name == "" {
			return nil, utils.Invalid(op, "Nom de l'instrument requis")
		}
		return CreateInstrument{Name: name}, nil
	case ActionUpdate:
		if id == "" || name == "" {
			return nil, utils.Invalid(op, "ID et nom requis")
		}
		return UpdateInstrument{ID: id, Name: name}, nil
	case ActionDelete:
		if id == "" {
			return nil, utils.Invalid(op, "ID requis")
		}
		return DeleteInstrument{ID: id}, nil
	default:
		return nil, UnsupportedAction(op)
	}
}

// OrchestraCommand is one of CreateOrchestra, UpdateOrchestra or DeleteOrchestra.
type OrchestraCommand interface {
	orchestraCommand()
}

type CreateOrchestra struct {
	Name        string
	Description *string
}

// UpdateOrchestra leaves the stored description alone when Description is nil.
type UpdateOrchestra struct {
	ID          string
	Name        string
	Description *string
}

type DeleteOrchestra struct {
	ID string
}

func (CreateOrchestra) orchestraCommand() {}
func (UpdateOrchestra) orchestraCommand() {}
func (DeleteOrchestra) orchestraCommand() {}

func ParseOrchestraCommand(action, id, name string, description *string) (OrchestraCommand, error) {
	const op = "ParseOrchestraCommand"

	switch action {
	case ActionCreate:
		if name == "" {
			return nil, utils.Invalid(op, "Nom de l'orchestre requis")
		}
		return CreateOrchestra{Name: name, Description: description}, nil
	case ActionUpdate:
		if id == "" || name == "" {
			return nil, utils.Invalid(op, "ID et nom requis")
		}
		return UpdateOrchestra{ID: id, Name: name, Description: description}, nil
	case ActionDelete:
		if id == "" {
			return nil, utils.Invalid(op, "ID requis")
		}
		return DeleteOrchestra{ID: id}, nil
	default:
		return nil, UnsupportedAction(op)
	}
}
