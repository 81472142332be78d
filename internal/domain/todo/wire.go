package todo

import "github.com/google/wire"

// ProviderSet 待办领域层 ProviderSet
var ProviderSet = wire.NewSet(NewValidator)
