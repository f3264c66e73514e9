// Package endpoint defines the catalog of supported git hosting platforms.
// Each endpoint carries a URL recognition pattern and an SSH URL template
// with {account} and {repository} placeholders expanded via
// valyala/fasttemplate.
//
// A Registry is an ordered, immutable list of endpoints. Match classifies a
// remote URL by trying each pattern in registry order and returning the
// first hit, so registry order doubles as the tie-break policy. RenderURL
// produces the canonical remote URL for a platform/account/repository
// triple.
package endpoint
