package repository

type txRepo struct {
	q querier
}

var _ Tx = (*txRepo)(nil)
