package nestedcsv

// Policy is the selection policy applied to the columns of a header when
// compiling a schema.
//
// Columns are first renamed using the Rename map, which may map a column to a
// name containing separators to nest it. The whitelist and blacklist are then
// matched against the renamed columns: a column is selected if the whitelist is
// nil or contains its name, and the blacklist is nil or does not contain it.
// When a name appears in both lists, the blacklist wins.
type Policy struct {
	Rename    map[string]string
	Whitelist []string
	Blacklist []string
}

// Name returns the name of column after renaming.
func (p *Policy) Name(column string) string {
	if name, ok := p.Rename[column]; ok {
		return name
	}
	return column
}

// Selects returns true if a column renamed to name is retained by p.
func (p *Policy) Selects(name string) bool {
	return p.selector().selects(name)
}

func (p *Policy) selector() selector {
	return selector{
		whitelist: setOf(p.Whitelist),
		blacklist: setOf(p.Blacklist),
	}
}

type selector struct {
	whitelist map[string]struct{}
	blacklist map[string]struct{}
}

func (s selector) selects(name string) bool {
	if s.whitelist != nil {
		if _, ok := s.whitelist[name]; !ok {
			return false
		}
	}
	if s.blacklist != nil {
		if _, ok := s.blacklist[name]; ok {
			return false
		}
	}
	return true
}

func setOf(names []string) map[string]struct{} {
	if names == nil {
		return nil
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (p Policy) clone() Policy {
	c := Policy{
		Whitelist: copyStrings(p.Whitelist),
		Blacklist: copyStrings(p.Blacklist),
	}
	if p.Rename != nil {
		c.Rename = make(map[string]string, len(p.Rename))
		for k, v := range p.Rename {
			c.Rename[k] = v
		}
	}
	return c
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
