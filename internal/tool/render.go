package tool

import (
	"encoding/json"
	"fmt"
	"io"
)

// Fprint writes outputs in a line-oriented form for the cmd front-ends:
// text verbatim, JSON messages marshaled on one line, variables as
// name=value. The host adapter renders the same outputs through its own
// message API instead.
func Fprint(w io.Writer, outs []Output) {
	for _, o := range outs {
		switch o.Kind {
		case KindText:
			fmt.Fprintln(w, o.Text)
		case KindJSON:
			b, err := json.Marshal(o.JSON)
			if err != nil {
				fmt.Fprintf(w, "{\"status\":\"error\",\"message\":%q}\n", err.Error())
				continue
			}
			fmt.Fprintln(w, string(b))
		case KindVariable:
			if s, ok := o.Value.(string); ok {
				fmt.Fprintf(w, "%s=%s\n", o.Name, s)
				continue
			}
			b, _ := json.Marshal(o.Value)
			fmt.Fprintf(w, "%s=%s\n", o.Name, string(b))
		}
	}
}

// Variable returns the value of the named variable output, if present.
func Variable(outs []Output, name string) (any, bool) {
	for _, o := range outs {
		if o.Kind == KindVariable && o.Name == name {
			return o.Value, true
		}
	}
	return nil, false
}
