package content

// Library is the frozen record of content constructors the evaluator
// calls while walking markup and math (spec.md §6 "Language items"). It
// is a struct of functions rather than an interface so a World can hand
// out a single shared value; the evaluator never type-switches on it, it
// only invokes the named field.
type Library struct {
	Text       func(value string) Content
	Space      func() Content
	Linebreak  func() Content
	Parbreak   func() Content
	SmartQuote func(double bool) Content
	Strong     func(body Content) Content
	Emph       func(body Content) Content
	Raw        func(text, lang string, block bool) Content
	Link       func(url string) Content
	Reference  func(target string, supplement Content) Content
	Heading    func(level int, body Content) Content
	ListItem   func(body Content) Content
	EnumItem   func(number *int, body Content) Content
	TermItem   func(term, desc Content) Content

	Equation       func(body Content, block bool) Content
	MathAlignPoint func() Content
	MathDelimited  func(open, body, close Content) Content
	MathAttach     func(base_, top, bottom Content) Content
	MathPrimes     func(n int) Content
	MathFrac       func(num, denom Content) Content
	MathRoot       func(index, radicand Content) Content
	MathAccent     func(base_ Content, accent rune) Content
}

// Default returns the concrete element implementations defined in this
// package, wired up as the constructor table. A World may substitute a
// different Library (e.g. one that renders to a different backend); the
// evaluator is agnostic to which is in force.
func Default() *Library {
	return &Library{
		Text:       func(v string) Content { return Text{Value: v} },
		Space:      func() Content { return Space{} },
		Linebreak:  func() Content { return Linebreak{} },
		Parbreak:   func() Content { return Parbreak{} },
		SmartQuote: func(double bool) Content { return SmartQuote{Double: double} },
		Strong:     func(body Content) Content { return Strong{Body: body} },
		Emph:       func(body Content) Content { return Emph{Body: body} },
		Raw: func(text, lang string, block bool) Content {
			return Raw{Text: text, Lang: lang, Block: block}
		},
		Link: func(url string) Content { return Link{URL: url} },
		Reference: func(target string, supplement Content) Content {
			return Reference{Target: target, Supplement: supplement}
		},
		Heading:  func(level int, body Content) Content { return Heading{Level: level, Body: body} },
		ListItem: func(body Content) Content { return ListItem{Body: body} },
		EnumItem: func(number *int, body Content) Content { return EnumItem{Number: number, Body: body} },
		TermItem: func(term, desc Content) Content { return TermItem{Term: term, Desc: desc} },

		Equation:       func(body Content, block bool) Content { return Equation{Body: body, Block: block} },
		MathAlignPoint: func() Content { return MathAlignPoint{} },
		MathDelimited: func(open, body, close Content) Content {
			return MathDelimited{Open: open, Body: body, Close: close}
		},
		MathAttach: func(base_, top, bottom Content) Content {
			return MathAttach{Base: base_, Top: top, Bottom: bottom}
		},
		MathPrimes: func(n int) Content { return MathPrimes{Count: n} },
		MathFrac:   func(num, denom Content) Content { return MathFrac{Num: num, Denom: denom} },
		MathRoot:   func(index, radicand Content) Content { return MathRoot{Index: index, Radicand: radicand} },
		MathAccent: func(base_ Content, accent rune) Content { return MathAccent{Base: base_, Accent: accent} },
	}
}
