package symbols

// FilterLevel keeps the symbols declared at exactly level.
func FilterLevel[S Symbol](syms []S, level int) []S {
	var out []S
	for _, s := range syms {
		if s.Level() == level {
			out = append(out, s)
		}
	}
	return out
}

// FilterData keeps the Data symbols.
func FilterData(syms []Symbol) []*Data {
	return filterKind[*Data](syms)
}

// FilterCallable keeps the Callable symbols.
func FilterCallable(syms []Symbol) []*Callable {
	return filterKind[*Callable](syms)
}

func filterKind[S Symbol](syms []Symbol) []S {
	var out []S
	for _, s := range syms {
		if v, ok := s.(S); ok {
			out = append(out, v)
		}
	}
	return out
}
