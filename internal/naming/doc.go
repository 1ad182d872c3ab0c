// Package naming converts schema identifiers into Java identifiers.
//
// Identifiers are tokenized on separators (_, -, space) and CamelCase
// boundaries, so "order_id", "orderId" and "OrderID" all share the tokens
// [order id]. The token form drives class names, field names, accessors and
// collision detection.
package naming
