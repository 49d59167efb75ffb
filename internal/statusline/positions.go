package statusline

import "fmt"

// Known positions of the document number in each transaction's save message.
// Revise these when the host language or release changes the message layout.
var (
	// "Req. compra criada sob o nº 0010012345"
	Requisition Parser = TokenParser{NumberToken: 6, StatusToken: -1}

	// purchase order message: status code at token 4, number at token 8
	Order Parser = TokenParser{NumberToken: 8, StatusToken: 4}

	ServiceEntry Parser = SliceParser{Start: 31, End: 42}

	Documents Parser = SliceParser{Start: 10, End: 20}
)

// Simulated builds a save message that every parser above accepts, carrying
// number in each position. Dry runs replay it in place of the host's message.
func Simulated(number int64) string {
	n := fmt.Sprintf("%010d", number%1e10)
	return fmt.Sprintf("Simulacao %s - - criado %s %s nº %s", n, n, n, n)
}
