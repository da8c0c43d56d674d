package gamegear

// Debug sets the CPU's Debug flag. The Host Loop's register and bank-table
// dump is controlled separately, by hostloop.Loop.Debug.
func Debug() Option {
	return func(m *Machine) { m.debug = true }
}
