package app

// Action identifies one trackable asynchronous operation. Actions are the
// keys of the dispatch tracker: each carries its own loading flag and last
// error message, independent of the others.
type Action string

// The closed set of tracked actions.
const (
	ActionFetchFollowers Action = "fetch_followers"
	ActionFetchFollowing Action = "fetch_following"
	ActionFetchUser      Action = "fetch_user"
)

// Actions returns every tracked action in stable order.
func Actions() []Action {
	return []Action{ActionFetchFollowers, ActionFetchFollowing, ActionFetchUser}
}

// String implements fmt.Stringer so the action reads well in logs and
// dispatch labels.
func (a Action) String() string {
	return string(a)
}
