package calculator

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
type EvaluateRequest struct {
	Expression string `json:"expression"`
}

// EvaluateResponse is the JSON response for POST /calculator/evaluate.
type EvaluateResponse struct {
	Expression string  `json:"expression"`
	Result     string  `json:"result"`    // formatted with the expression's decimal separator
	Value      float64 `json:"value"`     // the same result as a JSON number
	Separator  string  `json:"separator"` // "." or ","
}

// CalcRequest is the JSON body for binary operations (add, subtract, multiply,
// divide). Operands are expressions themselves, usually plain numbers.
type CalcRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

// CalcResponse is the JSON response for binary operations.
type CalcResponse struct {
	Operation  string  `json:"operation"`
	A          string  `json:"a"`
	B          string  `json:"b"`
	Expression string  `json:"expression"`
	Result     string  `json:"result"`
	Value      float64 `json:"value"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    string `json:"op"`    // "add", "subtract", "multiply", "divide"
	Value string `json:"value"` // the operand applied to the running expression
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Initial string      `json:"initial"` // starting expression
	Steps   []ChainStep `json:"steps"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Initial    string        `json:"initial"`
	Steps      []ChainResult `json:"steps"`
	Expression string        `json:"expression"`
	Result     string        `json:"result"`
	Value      float64       `json:"value"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op         string `json:"op"`
	Value      string `json:"value"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
}
