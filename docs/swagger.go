// Package docs Venue Compass API.
//
// Сервис поиска заведений вокруг пользователя и оценки курса компаса
// по датчикам устройства. Данные о заведениях берутся из OpenStreetMap
// через Overpass API, города разрешаются через Nominatim.
//
// Основные возможности:
// - Поиск баров, ресторанов, винных погребов и других заведений по категориям
// - Поиск в радиусе вокруг точки или в границах выбранного города
// - Подсказки городов по частичному названию
// - Сессии компаса со сглаженным курсом и каскадом источников ориентации
// - Статистика выполненных поисков
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
