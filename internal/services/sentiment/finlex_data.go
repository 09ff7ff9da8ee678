package sentiment

// financeLexicon maps finance-domain terms to valences in [-1, 1]. Derived
// from the Henry (2008) earnings-call word lists plus common
// screener/newswire vocabulary. Keys are lowercase single tokens; the
// analyzer matches them after normalization.
var financeLexicon = map[string]float64{
	// positive
	"beat":          0.7,
	"beats":         0.7,
	"exceed":        0.6,
	"exceeded":      0.6,
	"exceeds":       0.6,
	"outperform":    0.7,
	"outperformed":  0.7,
	"upgrade":       0.8,
	"upgraded":      0.8,
	"upgrades":      0.8,
	"growth":        0.5,
	"grew":          0.5,
	"profit":        0.5,
	"profitable":    0.6,
	"profitability": 0.5,
	"record":        0.4,
	"surge":         0.7,
	"surged":        0.7,
	"surges":        0.7,
	"rally":         0.6,
	"rallied":       0.6,
	"bullish":       0.7,
	"buy":           0.4,
	"strong":        0.5,
	"strength":      0.5,
	"improve":       0.5,
	"improved":      0.5,
	"improvement":   0.5,
	"gain":          0.5,
	"gains":         0.5,
	"gained":        0.5,
	"dividend":      0.3,
	"buyback":       0.5,
	"momentum":      0.3,
	"expansion":     0.4,
	"raise":         0.4,
	"raised":        0.4,
	"raises":        0.4,
	"soar":          0.8,
	"soared":        0.8,
	"soars":         0.8,
	"breakout":      0.5,
	"optimistic":    0.6,
	"tailwind":      0.4,
	"tailwinds":     0.4,

	// negative
	"miss":          -0.7,
	"missed":        -0.7,
	"misses":        -0.7,
	"shortfall":     -0.6,
	"underperform":  -0.7,
	"downgrade":     -0.8,
	"downgraded":    -0.8,
	"downgrades":    -0.8,
	"loss":          -0.6,
	"losses":        -0.6,
	"decline":       -0.5,
	"declined":      -0.5,
	"declines":      -0.5,
	"drop":          -0.5,
	"dropped":       -0.5,
	"drops":         -0.5,
	"plunge":        -0.8,
	"plunged":       -0.8,
	"plunges":       -0.8,
	"plummet":       -0.8,
	"plummeted":     -0.8,
	"bearish":       -0.7,
	"sell":          -0.4,
	"selloff":       -0.7,
	"weak":          -0.5,
	"weakness":      -0.5,
	"warning":       -0.6,
	"warns":         -0.6,
	"warned":        -0.6,
	"lawsuit":       -0.6,
	"investigation": -0.5,
	"probe":         -0.5,
	"recall":        -0.6,
	"bankruptcy":    -0.9,
	"default":       -0.7,
	"debt":          -0.3,
	"dilution":      -0.5,
	"cut":           -0.4,
	"cuts":          -0.4,
	"layoffs":       -0.6,
	"layoff":        -0.6,
	"restructuring": -0.3,
	"headwind":      -0.4,
	"headwinds":     -0.4,
	"slump":         -0.6,
	"slumped":       -0.6,
	"tumble":        -0.7,
	"tumbled":       -0.7,
	"tumbles":       -0.7,
	"halt":          -0.5,
	"halted":        -0.5,
	"delisting":     -0.8,
	"fraud":         -0.9,
	"sec":           -0.2,
	"subpoena":      -0.6,
	"downturn":      -0.6,
	"recession":     -0.7,
	"inflation":     -0.3,
	"volatile":      -0.2,
	"volatility":    -0.2,
}
