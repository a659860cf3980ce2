package geom

// ChunkSize is the edge length of a coarse spatial bucket, in blocks.
const ChunkSize = 16
