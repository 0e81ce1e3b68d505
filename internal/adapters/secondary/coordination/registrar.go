package coordination

import "strings"

// RegistrarPath derives the registrar node for a domain name by reversing
// its labels: "manta.example.com" watches "/com/example/manta".
func RegistrarPath(name string) string {
	labels := strings.Split(strings.Trim(name, "."), ".")
	var b strings.Builder
	for i := len(labels) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(labels[i])
	}
	return b.String()
}
