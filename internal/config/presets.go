package config

// Library is the set of demonstration methods, in demo-key order.
var Library = []MethodSpec{
	{Name: "plain-hunt-6", Title: "Plain Hunt on Six", Notation: "x16x16x16x16x16x16"},
	{Name: "plain-bob-doubles", Title: "Plain Bob Doubles", Notation: "5.1.5.1.5-125"},
	{Name: "plain-bob-doubles-cover", Title: "Plain Bob Doubles (covered)", Notation: "5.1.5.1.5-125", Cover: true},
	{Name: "plain-bob-minor", Title: "Plain Bob Minor", Notation: "x16x16x16-12", Cover: true},
	{Name: "st-simons-bob-doubles", Title: "St Simon's Bob Doubles", Notation: "5.1.5.3.5-125", Cover: true},
	{Name: "single-oxford-bob-minor", Title: "Single Oxford Bob Minor", Notation: "X14X16X16-12"},
	{Name: "erin-triples", Title: "Erin Triples", Notation: "7.3.1.3.1.3", Cover: true},
	{Name: "double-norwich-court-bob-major", Title: "Double Norwich Court Bob Major", Notation: "X14X36X58X18-18"},
	{Name: "grandsire-caters", Title: "Grandsire Caters", Notation: "3.1.9.1.9.1.9.1.9.1.9.1.9.1.9.1.9.1", Cover: true},
	{Name: "yorkshire-surprise-royal", Title: "Yorkshire Surprise Royal", Notation: "X30X14X50X16X1270X38X14X50X16X90-12"},
	{Name: "stedman-cinques", Title: "Stedman Cinques", Notation: "3.1.E.3.1.3-1", Cover: true},
	{Name: "little-bob-maximus", Title: "Little Bob Maximus", Notation: "X1TX14-12"},
}

func GetMethod(name string) (MethodSpec, bool) {
	for _, m := range Library {
		if m.Name == name {
			return m, true
		}
	}
	return MethodSpec{}, false
}

func ListMethods() []string {
	names := make([]string, len(Library))
	for i, m := range Library {
		names[i] = m.Name
	}
	return names
}
