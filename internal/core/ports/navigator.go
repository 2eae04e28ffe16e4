package ports

// Navigator is the navigation context enclosing the settings flow. It
// handles the back action when no panel other than settings is open.
type Navigator interface {
	Back()
}
