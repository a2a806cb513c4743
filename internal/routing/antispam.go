package routing

// AntiSpamPolicy holds the connection filter allow list for a region.
type AntiSpamPolicy struct {
	name   string
	region GeoRegion

	Skip      bool
	WhiteList []string
}

func NewAntiSpamPolicy(name string, region GeoRegion) (*AntiSpamPolicy, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &AntiSpamPolicy{name: name, region: region}, nil
}

func (a *AntiSpamPolicy) Kind() Kind        { return KindAntiSpamPolicy }
func (a *AntiSpamPolicy) Name() string      { return a.name }
func (a *AntiSpamPolicy) Region() GeoRegion { return a.region }
func (a *AntiSpamPolicy) Skipped() bool     { return a.Skip }

func (a *AntiSpamPolicy) Params(op Operation) *Params {
	p := newParams(a.name, op)
	p.setList("WhiteList", a.WhiteList)
	return p
}
