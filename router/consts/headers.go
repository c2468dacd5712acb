package consts

const (
	HeaderVersion = "X-STADTWACHE-VERSION"
)
