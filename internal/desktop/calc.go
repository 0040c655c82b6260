package desktop

import (
	"strconv"
	"strings"
)

// calculator is the arithmetic state kept in a calculator window's Extra
// map. Operations evaluate left to right as keys arrive.
type calculator struct {
	Display string
	Acc     float64
	Op      string
	Fresh   bool
}

const calcError = "Error"

func (c calculator) press(key string) calculator {
	if c.Display == "" {
		c.Display = "0"
	}
	switch {
	case key == "c" || key == "C" || key == "esc":
		return calculator{Display: "0"}
	case key == "backspace":
		if c.Fresh || c.Display == calcError || len(c.Display) <= 1 {
			c.Display = "0"
			return c
		}
		c.Display = c.Display[:len(c.Display)-1]
		if c.Display == "-" {
			c.Display = "0"
		}
		return c
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		if c.Fresh || c.Display == "0" || c.Display == calcError {
			c.Display = key
		} else {
			c.Display += key
		}
		c.Fresh = false
		return c
	case key == ".":
		if c.Fresh || c.Display == calcError {
			c.Display = "0."
		} else if !strings.Contains(c.Display, ".") {
			c.Display += "."
		}
		c.Fresh = false
		return c
	case key == "+" || key == "-" || key == "*" || key == "/":
		c = c.evaluate()
		if c.Display == calcError {
			return c
		}
		c.Acc = c.value()
		c.Op = key
		c.Fresh = true
		return c
	case key == "=" || key == "enter":
		c = c.evaluate()
		c.Op = ""
		c.Fresh = true
		return c
	}
	return c
}

func (c calculator) evaluate() calculator {
	if c.Op == "" || c.Fresh {
		return c
	}
	rhs := c.value()
	var out float64
	switch c.Op {
	case "+":
		out = c.Acc + rhs
	case "-":
		out = c.Acc - rhs
	case "*":
		out = c.Acc * rhs
	case "/":
		if rhs == 0 {
			return calculator{Display: calcError, Fresh: true}
		}
		out = c.Acc / rhs
	}
	c.Display = formatNumber(out)
	c.Acc = out
	c.Op = ""
	return c
}

func (c calculator) value() float64 {
	v, err := strconv.ParseFloat(c.Display, 64)
	if err != nil {
		return 0
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
