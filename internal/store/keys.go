package store

import "strconv"

// keys builds the namespaced key names. The prefix carries a schema version
// so deployments sharing a database do not collide.
type keys struct {
	prefix string
}

func (k keys) groupID() string {
	return k.prefix + ":group_id"
}

func (k keys) members() string {
	return k.prefix + ":members"
}

func (k keys) member(id int64) string {
	return k.prefix + ":member:" + strconv.FormatInt(id, 10)
}
