package types

type Author struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
}

type Book struct {
	Id       int64  `json:"id"`
	Title    string `json:"title"`
	AuthorId int64  `json:"author_id"`
}
